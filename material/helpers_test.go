package material

import "github.com/cwbudde/algo-glass/uniform"

func bindingCounter(n *int) uniform.Binding {
	return uniform.BindingFunc(func(uniform.Descriptor, uniform.Value) { *n++ })
}
