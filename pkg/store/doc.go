// Package store holds the live report of one editing session.
//
// Changes flow in one direction: callers dispatch an Event, Reduce computes
// the next Report from the current one, and the store swaps it in. A failed
// reduction leaves the current report untouched.
package store
