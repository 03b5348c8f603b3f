package compilation

type Info struct {
	Service   string `json:"service" yaml:"service"`
	Namespace string `json:"namespace" yaml:"namespace"`
}
