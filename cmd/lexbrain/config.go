// Copyright 2025 Lexia
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package main

import (
	"os"

	"github.com/goccy/go-yaml"
)

type redisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type qdrantConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Collection string `yaml:"collection"`
}

type embeddingConfig struct {
	Provider   string `yaml:"provider"`
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	Dimensions uint   `yaml:"dimensions"`
}

type chunkingConfig struct {
	MaxTokens int     `yaml:"max_tokens"`
	Overlap   float64 `yaml:"overlap"`
}

type workerConfig struct {
	Workers int `yaml:"workers"`
}

type config struct {
	Worker workerConfig `yaml:"worker"`

	Transport   redisConfig     `yaml:"transport"`
	VectorStore qdrantConfig    `yaml:"vector_store"`
	Embedding   embeddingConfig `yaml:"embedding"`
	Chunking    *chunkingConfig `yaml:"chunking"`

	TokenizerEncoding string `yaml:"tokenizer_encoding"`
	ContentAPIURL     string `yaml:"content_api_url"`
	DataPath          string `yaml:"data_path"`
}

func ReadConfig(path string) (*config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var conf config
	if err := yaml.Unmarshal(file, &conf); err != nil {
		return nil, err
	}

	if conf.Transport.Addr == "" {
		conf.Transport.Addr = "localhost:6379"
	}
	if conf.VectorStore.Host == "" {
		conf.VectorStore.Host = "localhost"
	}
	if conf.VectorStore.Port == 0 {
		conf.VectorStore.Port = 6334
	}
	if conf.VectorStore.Collection == "" {
		conf.VectorStore.Collection = "lexbrain"
	}
	if conf.Embedding.Provider == "" {
		conf.Embedding.Provider = "novita"
	}
	if conf.DataPath == "" {
		conf.DataPath = "./data"
	}

	return &conf, nil
}
