package params

// Source selects where the project tree comes from. It is either
// InternalSource or ExternalSource and is decided once per run.
type Source interface {
	isSource()
	String() string
}

// InternalSource renders a template bundled with kickstart.
type InternalSource struct {
	TemplateID string
}

// ExternalSource unpacks a template package fetched from the registry.
type ExternalSource struct {
	Ref string
}

func (InternalSource) isSource() {}
func (ExternalSource) isSource() {}

// String implements fmt.Stringer.
func (s InternalSource) String() string {
	return "template " + s.TemplateID
}

// String implements fmt.Stringer.
func (s ExternalSource) String() string {
	return "package " + s.Ref
}
