// Package config loads the runner configuration.
//
// Files are YAML or TOML, chosen by extension:
//
//	# runner.yaml
//	isolate:
//	  strict: true
//	  max_call_stack_size: 512
//	  webassembly: true
//	runner:
//	  timeout: 5s
//	  globals:
//	    env: production
//	logging:
//	  level: debug
//	metrics:
//	  enabled: true
//	  address: ":9090"
//
// Loading applies defaults, then JSRUNTIME_* environment overrides, then
// validation. Validation reports every failing field at once through
// ValidationError.
package config
