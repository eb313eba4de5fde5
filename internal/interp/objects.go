package interp

// Instance is a runtime object: the class it was created from, plus its
// own field table. Fields are created on first assignment (there is no
// fixed field list declared by the class), matching a dynamically-typed
// object model rather than the teacher's statically field-typed
// ObjectInstance.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (o *Instance) Type() string   { return "INSTANCE" }
func (o *Instance) String() string { return o.Class.Name + " instance" }

// Get reads a field first, then falls back to a bound method. Returns
// false if neither exists.
func (o *Instance) Get(name string) (Value, bool) {
	if v, ok := o.Fields[name]; ok {
		return v, true
	}
	if method, ok := o.Class.FindMethod(name); ok {
		return method.bind(o), true
	}
	return nil, false
}

// Set writes (or creates) a field. Fields always shadow methods of the
// same name once set.
func (o *Instance) Set(name string, value Value) {
	o.Fields[name] = value
}
