// Copyright 2026 SpecForm Authors
// Use of this source code is governed by the project license.

/*
Package validate checks decoded data against the spec it was decoded with
and reports every violation found.

Each field runs three independent checks: presence, type, enum. Fields
nested inside an array container are extracted element-wise, so one missing
value in one array element is reported exactly once. No check stops the
others; the report is exhaustive and never fatal.
*/
package validate
