// Copyright 2026 SpecForm Authors
// Use of this source code is governed by the project license.

/*
Package lenientjson parses the JSON-like text language models actually
produce.

Parse first extracts a candidate value from surrounding prose or markdown
fences, then attempts a strict parse, then a repairing parse that tolerates
unquoted keys, single-quoted strings, bare-word values, trailing commas and
comments. Every repair is surfaced as a warning; Parse fails only when no
value can be recovered at all.
*/
package lenientjson
