package models

import "github.com/uptrace/bun"

type AppMeta struct {
	bun.BaseModel `bun:"table:app_meta"`

	Key   string `bun:"key,pk,type:text"`
	Value string `bun:"value,type:text"`
}
