// Package cast converts loosely typed compile arguments.
//
// Integer flags go through [safemath] so that negative or oversized values
// fail instead of wrapping. Other scalar settings use [cast].
package cast
