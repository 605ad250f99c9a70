// internal/checks/toolchain/tectonic-binary/config.go
package tectonicbinary

type Config struct {
	Binary string
}

func LoadConfig() *Config {
	return &Config{Binary: "tectonic"}
}
