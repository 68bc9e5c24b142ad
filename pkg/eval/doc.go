/*
Package eval turns a block tree into a computation.

Evaluating a block gathers the Values and Rows directly under its header,
evaluates each in order and invokes the behavior its scriptRef resolves to with
the resulting argument list. A Value holding an Expression evaluates that
Expression first, so expression trees are computed bottom-up and only when an
enclosing block runs.

Argument lists and resolved behaviors are cached per node; callers that
restructure a header after the first run must call Invalidate.
*/
package eval
