// Package sorting provides step producers for comparison sorts.
//
// Every producer sorts a private copy of the input and narrates the work as
// compare and swap events over original positions. A player that applies
// each swap to its own copy of the input ends with the sorted array carried
// by the final result event.
//
// Positions are marked [step.RoleSorted] as soon as they hold their final
// value, so the player can shade the settled region while the run is still
// in progress.
package sorting
