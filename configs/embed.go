package configs

import _ "embed"

// ApplicationYAML is the default application.yml bundled into the binary.
//
//go:embed application.yml
var ApplicationYAML []byte

// MessagesYAML is the default messages.yml bundled into the binary.
//
//go:embed messages.yml
var MessagesYAML []byte
