package domain

import (
	"fmt"
	"strings"
)

// Level é a granularidade de agregação de um insight
type Level string

const (
	LevelAccount  Level = "account"
	LevelCampaign Level = "campaign"
	LevelAdSet    Level = "adset"
	LevelAd       Level = "ad"
)

var levels = []Level{LevelAccount, LevelCampaign, LevelAdSet, LevelAd}

// ParseLevel valida o nível recebido; string vazia resulta em erro
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if l.IsValid() {
		return l, nil
	}

	return "", fmt.Errorf("nível inválido %q, valores aceitos: %s", s, strings.Join(LevelNames(), ", "))
}

func (l Level) IsValid() bool {
	for _, v := range levels {
		if l == v {
			return true
		}
	}
	return false
}

// EntityField é o campo do registro bruto que identifica a entidade neste nível
func (l Level) EntityField() string {
	switch l {
	case LevelCampaign:
		return "campaign_id"
	case LevelAdSet:
		return "adset_id"
	case LevelAd:
		return "ad_id"
	default:
		return "account_id"
	}
}

func (l Level) String() string {
	return string(l)
}

func LevelNames() []string {
	names := make([]string, 0, len(levels))
	for _, l := range levels {
		names = append(names, string(l))
	}
	return names
}
