// Package configs embeds the commented configuration templates written by
// `thesisdash config init`.
//
// Templates:
//   - project-config.example.yaml: .thesisdash.yaml in the project root
//   - user-config.example.yaml: ~/.config/thesisdash/config.yaml
//
// Every key in the templates is commented out, so a freshly written file
// changes nothing until edited. See internal/config for precedence.
package configs

import _ "embed"

// ProjectConfigTemplate is written to .thesisdash.yaml.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string

// UserConfigTemplate is written to the user config path.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
