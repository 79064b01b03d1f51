// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a validated Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Sources are layered with koanf, lowest precedence first:

 1. Default()
 2. a YAML file named by -c or CONFIG_FILE
 3. environment variables named after the keys in upper case
 4. flags given on the command line

# Keys

	port                 server port (default 3318)
	database_type        postgres, sqlite or memory (default sqlite)
	database_url         connection string or SQLite path; required unless memory
	log_level            debug, info, warn, error
	log_format           text or json
	search_endpoint      Wikipedia API URL
	search_user_agent    User-Agent sent upstream
	search_timeout       per-call timeout, e.g. 3s
	search_cache_ttl     Redis TTL for search results
	redis_url            enables the search cache when set
	items_file           "slug weight" list for random items
	banned_words         comma-separated substrings excluded from random items
	rank_page_size       default ranking page size (100)
	max_rank_page_size   largest accepted limit (500)
	metrics_enabled      serve /metrics
	tracing_enabled      export OpenTelemetry spans
	tracing_exporter     otlp-http or otlp-grpc
	tracing_endpoint     collector host:port
	tracing_sample_rate  0.0 to 1.0
	tracing_insecure     disable TLS to the collector

# CLI Flags

	-c          config file
	-p          port
	-t          database type
	-d          database URL
	-log-level  log level
	-items      items file
	-redis      Redis URL
*/
package cliparse
