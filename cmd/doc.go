// Package cmd provides the command-line interface for rulekit.
//
// This package implements all CLI commands using the Cobra framework.
//
// # Available Commands
//
//   - generate: Compose and write rule documents for a stack
//   - list: List configured stacks and their overlays
//   - watch: Regenerate rules when the template library changes
//   - interactive: Guided generation without remembering flags
//   - config: Inspect or initialize the rules configuration
//   - version: Show version information
//
// # Command Examples
//
//	// Generate Laravel rules into the current project
//	rulekit generate --stack laravel
//
//	// React with an architecture and state management overlay
//	rulekit generate --stack react --architecture atomic --state-management redux
//
//	// Regenerate on template changes
//	rulekit watch --stack angular --signals
//
//	// Write a starter rules.yaml
//	rulekit config init --templates ./templates
//
// # Configuration Integration
//
// Commands respect configuration from multiple sources in order of
// precedence:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (RULEKIT_*)
//  3. Configuration file (.rulekit.yml)
//  4. Default values (lowest priority)
package cmd
