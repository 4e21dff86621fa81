/* Package main: a CEK machine for a minimal functional core language.

A module is a set of top-level lambda definitions over a small expression
language: positional variable references, globals, built-in operations, data
constructors, integer literals, application, non-recursive let, and
constructor match. The machine reduces the canonical entry point

	Ap(Global("main"), [Pack(0, 0)])

without substitution, by stepping a (Control, Environment, Kontinuation)
triple:

  - Control holds the expression currently being reduced, or the value it
    just reduced to.
  - The environment is a stack of shared value handles; Local(i) addresses
    the i-th value counted from the top, so binders cost one push and one
    positional read, never a lookup.
  - The kontinuation is a stack of frames recording pending work: arguments
    still to evaluate, an in-flight partial application awaiting one more
    value, a match waiting on its scrutinee, a let waiting on its bound
    value, and cleanup frames restoring the environment afterwards.

Functions and constructors are curried through PAP values, which collect
arguments one at a time; a PAP that has received its full argument count
fires on the next step, entering a lambda body on a fresh environment,
applying a built-in, or building a saturated data value. Left-to-right
argument order is a hard guarantee because built-ins perform observable
character and integer I/O.

The machine is sequential and single-shot: one goroutine steps it from the
entry expression until the control holds a plain number or data value with
no frames left, and the step count is reported for diagnostics.
*/
package main
