// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package document models a JSON document as an ordered tree of [Value]
and inserts values into arrays found by key.

A Value is one of null, bool, number, string, array or object.
Objects keep the order in which their members appear in the source,
which makes [Insert] deterministic: it searches the document depth first,
visiting nested objects in member order, and appends to the array
held by the first member with the requested key.

Documents are decoded from and encoded to JSON or YAML with [Decode] and [Encode].
Numbers keep their literal text so decoding and encoding is lossless.
*/
package document
