// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voter anonymizes client addresses before they reach the logs.

	salt, err := voter.NewSalt()
	id := voter.Fingerprint(middleware.GetClientIP(r), salt)

Fingerprint returns the first 8 bytes of HMAC-SHA256 as hex. Votes from
one address share a fingerprint for as long as the salt is kept, so a
fixed salt (ip_salt) lets repeat voters be correlated across restarts.
*/
package voter
