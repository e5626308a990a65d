package auth

type Config struct {
	StoreDir string `env:"AUTH_STORE_DIR" envDefault:"./data"` // StoreDir is the directory holding the embedded auth database.
}
