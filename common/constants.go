package common

const (
	SrcFileExtension = ".beb"
	ProjectFileName  = "beblang.toml"
	BeblangVersion   = "0.1.0"
	HistoryFileName  = ".beblang_history"
)
