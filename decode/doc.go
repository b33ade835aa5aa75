// Copyright 2026 SpecForm Authors
// Use of this source code is governed by the project license.

/*
Package decode turns a model's raw textual response back into data matching
the spec it was prompted with.

The pipeline runs in a fixed order, each stage an identity when its driving
table is empty:

 1. lenient parse (lenientjson), surfacing warnings
 2. bare-sequence auto-wrap under the spec's single Many field
 3. identifier restoration from wire keys to source identifiers
 4. keyword retyping of string values to symbolic tokens
 5. key-namespace prefixing, honoring union "type" discriminators

Serialize is the outbound inverse for plain data: dates and datetimes to
ISO strings, keywords to plain strings, recursively over structures.
*/
package decode
