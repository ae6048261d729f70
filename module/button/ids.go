package button

// ParamID indexes the module parameters.
type ParamID int

const (
	ButtonParam ParamID = iota
	NumParams
)

// InputID indexes the module inputs.
type InputID int

const (
	TriggerInput InputID = iota
	NumInputs
)

// OutputID indexes the module outputs.
type OutputID int

const (
	TriggerOutput OutputID = iota
	GateOutput
	ToggleOutput
	ConstOutput
	NumOutputs
)

// LightID indexes the module indicators. The six constant lights form
// plus/minus pairs, one pair per magnitude.
type LightID int

const (
	TriggerLight LightID = iota
	GateLight
	ToggleLight
	Const1PlusLight
	Const1MinusLight
	Const5PlusLight
	Const5MinusLight
	Const10PlusLight
	Const10MinusLight
	NumLights
)
