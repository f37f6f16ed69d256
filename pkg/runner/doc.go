// Package runner executes a configured browser suite from the command line.
//
// It loads a YAML run file, layers it over the browser defaults from
// package config, builds the suite's session manager and cases, runs them,
// prints progress and a summary, and writes report artifacts.
//
// # Configuration
//
//	suite: spotify-login
//	browser:
//	  engine: chromium
//	  headless: true
//	  element_timeout: 10s
//	login:
//	  url: https://accounts.spotify.com/en/login/
//	run: "login/*"
//	artifacts:
//	  enabled: true
//	  output_dir: .probe/reports
//	logging:
//	  verbosity: normal
package runner
