// Package services defines the sentinel error markers shared across gifcast
// components so callers can classify failures with errors.Is without
// depending on the component that produced them.
package services
