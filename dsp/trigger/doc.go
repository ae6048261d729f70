// Package trigger provides the logic-level building blocks of trigger and gate
// processing: a hysteresis edge detector and a one-shot pulse generator.
//
// Both types are tiny value structs intended to live inside a module and be
// stepped once per sample from the audio thread. Their zero values are ready
// to use, they never allocate, and they are not safe for concurrent use.
package trigger
