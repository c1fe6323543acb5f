// Package eventservice implements the event catalog inside the
// event-catalog context.
//
// The module owns the organizer-facing model: events and their moderation
// lifecycle, ordered polls with voting windows, options and reusable
// participants, and quota-checked event creation driven by subscription plan
// derivation. The ballot engine reads this catalog through projections; it
// never writes here.
package eventservice
