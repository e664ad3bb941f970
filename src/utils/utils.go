package utils

import (
	"encoding/json"
	"log"
)

func FailOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %s", msg, err)
	}
}

type Serializable interface {
	Serialize() ([]byte, error)
}

func Serialize[T any](content T) ([]byte, error) {
	payload, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	return payload, nil
}

func Map[T any, U any](arr []T, fn func(T) U) []U {
	mapped := make([]U, len(arr))
	for i, x := range arr {
		mapped[i] = fn(x)
	}

	return mapped
}
