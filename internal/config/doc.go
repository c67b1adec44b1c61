// Package config holds the generator settings: marker names, emitted method
// names, output file name and worker count.
//
// Settings come from an optional YAML file (cmpby.yaml by default). Missing
// values are filled with defaults and the result is validated before use.
package config
