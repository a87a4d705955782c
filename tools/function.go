package tools

// Function is the closed set of functions the model may call.
type Function int

const (
	FunctionUnknown Function = iota
	FunctionGetCamerasByZipcode
	FunctionSearchCamerasByStreet
)

var functionNames = [...]string{
	FunctionUnknown:               "unknown",
	FunctionGetCamerasByZipcode:   "get_cameras_by_zipcode",
	FunctionSearchCamerasByStreet: "search_cameras_by_street",
}

// Functions lists the known functions in the order they are offered to the
// model.
func Functions() []Function {
	return []Function{
		FunctionGetCamerasByZipcode,
		FunctionSearchCamerasByStreet,
	}
}

func (f Function) String() string {
	if f < 0 || int(f) >= len(functionNames) {
		return functionNames[FunctionUnknown]
	}
	return functionNames[f]
}

// ParseFunction matches name exactly. Anything else is FunctionUnknown.
func ParseFunction(name string) Function {
	for _, f := range Functions() {
		if f.String() == name {
			return f
		}
	}
	return FunctionUnknown
}
