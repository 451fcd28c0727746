package mark

// DefaultShuffleSeed seeds the deterministic shuffle applied on top of
// the Golay code when no explicit seed is given.
var DefaultShuffleSeed int64 = 1234567890

// Option selects the encoding applied to a mark's payload.
type Option func(*codec)

type codec struct {
	f    factory
	pass string
}

func newCodec(opts ...Option) codec {
	var c codec
	for _, opt := range opts {
		opt(&c)
	}
	if c.f == nil {
		c.f = shuffledgolay(DefaultShuffleSeed)
	}
	return c
}

// WithoutECC uses the payload bits as-is, with no error correction.
func WithoutECC() Option {
	return func(c *codec) {
		c.f = withoutECC{}
	}
}

// WithGolay protects the payload with the Golay code and shuffles the
// encoded bits with the seeded permutation, spreading the damage of any
// locally corrupted image region across codewords.
func WithGolay(seed int64) Option {
	return func(c *codec) {
		c.f = shuffledgolay(seed)
	}
}

// WithReedSolomon frames the payload with Reed-Solomon parity shards so
// corruption can be detected and, when shard erasures are identifiable,
// repaired.
func WithReedSolomon(dataShards, parityShards int) Option {
	return func(c *codec) {
		if dataShards < 1 {
			dataShards = 4
		}
		if parityShards < 1 {
			parityShards = 2
		}
		c.f = rsFraming{dataShards: dataShards, parityShards: parityShards}
	}
}

// WithPassphrase encrypts the payload with AES-GCM under a key derived
// from the passphrase before any error-correcting code is applied.
// Decoding with a wrong passphrase, or from a damaged mark the ECC
// could not repair, fails authentication.
func WithPassphrase(pass string) Option {
	return func(c *codec) {
		c.pass = pass
	}
}

func (c codec) encode(plain []bool) ([]bool, error) {
	if c.pass != "" {
		ct, err := encrypt(bytesOf(plain), c.pass)
		if err != nil {
			return nil, err
		}
		plain = boolsOf(ct)
	}
	return c.f.encode(plain), nil
}

// decode reverses encode and returns the payload as zero-padded bytes.
func (c codec) decode(bits []bool, plainBits int) ([]byte, error) {
	raw, err := c.f.decode(bits, c.cryptBits(plainBits))
	if err != nil {
		return nil, err
	}
	if c.pass == "" {
		return raw, nil
	}
	return decrypt(raw[:c.cryptBits(plainBits)/8], c.pass)
}

// encodedLen returns how many bits a plainBits payload occupies after
// encryption and ECC.
func (c codec) encodedLen(plainBits int) int {
	return c.f.encodedLen(c.cryptBits(plainBits))
}

func (c codec) cryptBits(plainBits int) int {
	if c.pass == "" {
		return plainBits
	}
	return ((plainBits+7)/8 + cryptOverhead) * 8
}
