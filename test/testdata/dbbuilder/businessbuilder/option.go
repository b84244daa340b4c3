package businessbuilder

type Option func(*FactoryParams)

type FactoryParams struct {
	Label string
}

func WithLabel(label string) Option {
	return func(p *FactoryParams) { p.Label = label }
}
