package db

import _ "embed"

//go:embed schema.sql
var Schema string

type Speaker string

const (
	SPEAKER_A     Speaker = "a"
	SPEAKER_B     Speaker = "b"
	SPEAKER_OTHER Speaker = ""
)
