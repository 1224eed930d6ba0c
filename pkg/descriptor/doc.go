// Package descriptor holds the provisioning manifest deskset reads and
// writes: system settings, locale, categorized package lists, themes and the
// reserved widgets list.
//
// A Descriptor is either built fresh with New and filled in by the probe, or
// loaded whole from a TOML document, mutated and saved again. Every CLI
// invocation loads and saves independently; Update serializes concurrent
// load-mutate-save cycles on the same file with an advisory lock.
package descriptor
