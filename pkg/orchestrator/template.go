package orchestrator

// configTemplate is the body written for a brand new named config, with
// "{name}" substituted for the session name - the same placeholder scheme
// as original_source's baked-in rmux.yaml template (not present in the
// retrieved sources as a data file, so this is written fresh against
// sessionmodel's own YAML shape rather than translated).
const configTemplate = `name: {name}
path: .
windows:
  - name: main
    panes:
      - path: .
`
