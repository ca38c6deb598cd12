package utils

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

var (
	encoders   = make(map[string]*tiktoken.Tiktoken)
	encodersMu sync.Mutex
	loaderOnce sync.Once
)

// NumTokens counts the tokens of text with the encoding used by model,
// falling back to cl100k_base for models tiktoken does not know.
func NumTokens(model, text string) (int, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	encodersMu.Lock()
	tkm, ok := encoders[model]
	if !ok {
		var err error
		tkm, err = tiktoken.EncodingForModel(model)
		if err != nil {
			tkm, err = tiktoken.GetEncoding("cl100k_base")
		}
		if err != nil {
			encodersMu.Unlock()
			return 0, err
		}
		encoders[model] = tkm
	}
	encodersMu.Unlock()

	return len(tkm.Encode(text, nil, nil)), nil
}
