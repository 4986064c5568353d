// Package reconcile merges transaction records gathered from heterogeneous
// sources (bank exports, card statements, trading platforms) into a single
// duplicate-free ledger following the banking sign convention: negative
// amounts are money out, positive amounts are money in.
//
// The engine is built from small, stateless pieces: a Detector infers the
// sign convention used by one source batch and corrects it, Signature
// derives a stable matching key from a record, and a Matcher clusters and
// merges records that describe the same real-world transaction. The
// Pipeline composes them into a single validate, correct, merge, order run
// that produces the consolidated ledger and a verifiable Report.
package reconcile
