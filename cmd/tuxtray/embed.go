package main

import _ "embed"

// embeddedConfig holds the YAML configuration embedded at build time. It
// carries the bundled skin definitions; user files layer on top of it.
//
//go:embed embed_config.yaml
var embeddedConfig []byte
