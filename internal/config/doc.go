// Package config provides configuration parsing for markup.
//
// The configuration is stored in markup.yaml next to the page directory.
// JSON is accepted as well. A missing file yields the defaults.
//
// # Configuration File Structure
//
//	render:
//	  maxDepth: 512
//	  minify: false
//	server:
//	  addr: ":8080"
//	  pages: pages
//	  watch: false
//	  readTimeout: 10s
//	  writeTimeout: 10s
//	s3:
//	  bucket: ""
//	  prefix: ""
//	  region: ""
//	metrics:
//	  enabled: true
//	  namespace: markup
//	  path: /metrics
//	tracing:
//	  enabled: false
//	  tracerName: markup
//	log:
//	  level: info
//	  format: text
//
// # Usage
//
//	cfg, err := config.Load("markup.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Server.Addr)
package config
