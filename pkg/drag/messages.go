package drag

const (
	msgDelete        = "drop here to delete block(s)"
	msgAccepted      = "drop here to add block to script"
	msgOnExpression  = "cannot drop an expression on another expression"
	msgOnSelector    = "cannot currently drop an expression on a drop-down"
	msgValuesOnly    = "expressions blocks can only be dropped on values"
	msgContainsFront = "drop to add to top of the block container"
	msgAfter         = "drop to add after this block"
	msgNotATarget    = "Not a target, drop to cancel drag"
)
