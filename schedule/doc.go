// Package schedule drives turn-based Steppers, such as pathfinder Finders,
// the way a host frame loop would.
//
// A Loop owns a set of Steppers and a queue of posted tasks. Each turn first
// runs the posted tasks, then calls Step once on every Stepper. Turns can be
// paced with WithRate to emulate a fixed frame rate; unpaced loops run turns
// back to back and park while every Stepper is idle.
//
// Posting is the only safe way to touch a Stepper from another goroutine:
// the task runs on the loop goroutine between two turns.
package schedule
