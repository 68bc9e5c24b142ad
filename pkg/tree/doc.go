/*
Package tree implements the block tree: an arena of typed nodes with parent and
ordered child references, and the lifecycle manager that keeps it well-formed.

Every attachment runs the lifecycle rules of the attached node's kind:

  - Step, Context and Expression nodes are scaffolded with a header on creation,
    and a Context also gets its disclosure, locals and contains regions.
  - Rows, Disclosures, Values and Locals always end up inside a header (or a Row).
  - Steps and Contexts attached under a Context end up in its contains region.

Repairs never fail. Renderers follow the tree through domain.LifecycleHooks and
never splice it themselves.

	t := tree.New()
	step := t.Create(domain.KindStep, domain.Attrs{domain.AttrScriptRef: "control.log"})
	value := t.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: "text"})
	_ = t.Append(step, value) // relocated into the step's header
*/
package tree
