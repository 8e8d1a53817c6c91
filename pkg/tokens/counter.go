package tokens

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tiktoken-go/tokenizer"
)

// Counter counts tokens for a given model. Implementations must be
// deterministic and side-effect free.
type Counter interface {
	CountTokens(model string, text string) int
}

// TiktokenCounter counts tokens using the tiktoken BPE encodings. Models
// without a known encoding fall back to cl100k_base.
type TiktokenCounter struct {
	mu     sync.Mutex
	codecs map[string]tokenizer.Codec
}

var _ Counter = (*TiktokenCounter)(nil)

func NewTiktokenCounter() *TiktokenCounter {
	return &TiktokenCounter{
		codecs: map[string]tokenizer.Codec{},
	}
}

func (c *TiktokenCounter) CountTokens(model string, text string) int {
	codec := c.getCodec(model)

	ids, _, err := codec.Encode(text)
	if err != nil {
		// Encoding only fails on internal regexp errors, which we treat as
		// an empty count rather than propagating.
		log.Warn().Err(err).Str("model", model).Msg("failed to encode text")
		return 0
	}

	return len(ids)
}

func (c *TiktokenCounter) getCodec(model string) tokenizer.Codec {
	c.mu.Lock()
	defer c.mu.Unlock()

	if codec, ok := c.codecs[model]; ok {
		return codec
	}

	codec, err := tokenizer.ForModel(tokenizer.Model(model))
	if err != nil {
		log.Debug().Str("model", model).Msg("unknown model, falling back to cl100k_base")
		codec, err = tokenizer.Get(tokenizer.Cl100kBase)
		if err != nil {
			// cl100k_base is compiled into the tokenizer package
			panic(err)
		}
	}

	c.codecs[model] = codec
	return codec
}
