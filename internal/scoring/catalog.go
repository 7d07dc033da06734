package scoring

import (
	"fmt"

	"docval/pkg/schema"
)

// Keyword sets, matched as substrings of the lower-cased document.
var (
	taxTerms            = []string{"tributário", "tributaria", "fiscal", "imposto"}
	socialSecurityTerms = []string{"previdenciário", "previdenciaria", "inss", "benefício", "custeio"}

	defenseTerms = []string{
		"defesa administrativa", "defesas administrativas", "defesa perante",
		"receita federal", "receita estadual", "receita municipal", "previdenciário",
	}
	securitizationDefenseTerms = []string{
		"defesa administrativa", "defesas administrativas", "defesa perante",
		"receita federal", "receita estadual",
	}

	lawsuitTerms = []string{
		"processo judicial", "processos judiciais", "ação judicial",
		"ações judiciais", "processo", "processos", "ação", "ações",
	}
	securitizationLawsuitTerms = []string{
		"processo judicial", "processos judiciais", "ação judicial",
		"ações judiciais", "processo", "processos",
	}

	successTerms = []string{
		"resultado exitoso", "condução bem-sucedida", "bem-sucedida",
		"resultado favorável", "sucesso", "procedente", "favorável",
	}
	rulingSuccessTerms = append(append([]string{}, successTerms...), "sentença favorável")

	securitizationTerms = []string{
		"securitização", "securitizacao", "securitização de créditos",
		"securitização de creditos", "créditos", "creditos",
	}

	historyTerms = []string{"histórico", "histórico profissional", "processos conduzidos", "resultados"}
	areaTerms    = []string{"tributária", "tributário", "previdenciária", "previdenciário", "benefício", "custeio"}

	securitizationHistoryTerms = []string{
		"histórico", "histórico profissional", "processos conduzidos",
		"lista de processos", "processos realizados",
	}
	outcomeTerms = []string{"resultado", "obtido", "conduzido"}

	accountingTerms               = []string{"contábil", "contabil", "cpa", "mba", "pós-graduação", "especialização contábil"}
	securitizationAccountingTerms = []string{
		"contábil", "contabil", "cpa", "mba", "pós-graduação", "pós graduação",
		"especialização contábil", "formação contábil", "graduação contábil",
		"certificado contábil", "curso contábil",
	}
	debentureTerms = []string{"debêntures", "debentures", "emissão de debêntures", "emissão de debentures"}
	documentTerms  = []string{
		"análise de documentos", "análise contábil", "análise fiscal",
		"análise financeira", "documentos contábeis", "documentos fiscais",
	}

	rulingTerms      = []string{"sentença", "sentenças", "favorável", "favoráveis", "julgado procedente"}
	certificateTerms = []string{"certidão", "certidao", "trânsito em julgado", "transito em julgado", "trânsito"}
)

// buildRules assembles one rule per mandatory key from cfg.
func buildRules(cfg Config) map[schema.RequirementKey]Rule {
	quantity := Pattern("quantidade", QuantityPattern(cfg.RequiredCount))
	window := Pattern("período", TimeWindowPattern(cfg.TimeWindowYears))
	amount := MinAmount("valor", cfg.CurrencyThreshold)

	bounds := fmt.Sprintf("%d anos, valores >= %s", cfg.TimeWindowYears, FormatAmount(cfg.CurrencyThreshold))
	count := cfg.RequiredCount

	rules := []Rule{
		{
			Key: schema.KeyGeneralExperience,
			Criteria: []Criterion{
				Keywords("tributário", taxTerms...),
				Keywords("previdenciário", socialSecurityTerms...),
			},
			MetAt:       2,
			MetNote:     "Menciona direito tributário e previdenciário",
			MissingNote: "Não encontrou menção completa a direito tributário e previdenciário",
		},
		{
			Key: schema.KeyGroup1ItemI,
			Criteria: []Criterion{
				Keywords("defesa", defenseTerms...),
				quantity, amount, window,
				Keywords("sucesso", successTerms...),
			},
			MetAt:      4,
			DoubtfulAt: 2,
			MetNote:    fmt.Sprintf("Encontrou evidências de defesas administrativas (%s, resultado exitoso)", bounds),
			MissingNote: fmt.Sprintf("Não encontrou evidências suficientes de %d defesas administrativas >= %s nos últimos %d anos com resultado exitoso",
				count, FormatAmount(cfg.CurrencyThreshold), cfg.TimeWindowYears),
		},
		{
			Key: schema.KeyGroup1ItemII,
			Criteria: []Criterion{
				Keywords("processo", lawsuitTerms...),
				quantity, amount, window,
				Keywords("sucesso", rulingSuccessTerms...),
			},
			MetAt:      4,
			DoubtfulAt: 2,
			MetNote:    fmt.Sprintf("Encontrou evidências de processos judiciais (%s, resultado exitoso)", bounds),
			MissingNote: fmt.Sprintf("Não encontrou evidências suficientes de %d processos judiciais >= %s nos últimos %d anos com resultado exitoso",
				count, FormatAmount(cfg.CurrencyThreshold), cfg.TimeWindowYears),
		},
		{
			Key: schema.KeyGroup1ItemIII,
			Criteria: []Criterion{
				Keywords("histórico", historyTerms...),
				Keywords("área", areaTerms...),
			},
			MetAt:       2,
			DoubtfulAt:  1,
			MetNote:     "Encontrou histórico profissional na área",
			PartialNote: "Menção parcial a histórico profissional",
			MissingNote: "Não encontrou histórico profissional completo",
		},
		{
			Key:         schema.KeyGroup1ItemIV,
			Criteria:    []Criterion{Keywords("contábil", accountingTerms...)},
			MetAt:       1,
			MetNote:     "Encontrou menção a formação/especialização contábil",
			MissingNote: "Não encontrou comprovação de capacidade contábil",
		},
		{
			Key: schema.KeyGroup2ItemI,
			Criteria: []Criterion{
				Keywords("defesa", securitizationDefenseTerms...),
				Keywords("securitização", securitizationTerms...),
				quantity, amount, window,
				Keywords("sucesso", successTerms...),
			},
			MetAt:       5,
			DoubtfulAt:  3,
			MetNote:     fmt.Sprintf("Encontrou defesas administrativas em securitização (%s, resultado exitoso)", bounds),
			MissingNote: "Não encontrou evidências suficientes de defesas administrativas em securitização",
		},
		{
			Key: schema.KeyGroup2ItemII,
			Criteria: []Criterion{
				Keywords("processo", securitizationLawsuitTerms...),
				Keywords("securitização", securitizationTerms...),
				quantity, amount, window,
				Keywords("sucesso", rulingSuccessTerms...),
			},
			MetAt:       5,
			DoubtfulAt:  3,
			MetNote:     fmt.Sprintf("Encontrou processos judiciais em securitização (%s, resultado exitoso)", bounds),
			MissingNote: "Não encontrou evidências suficientes de processos judiciais em securitização",
		},
		{
			Key: schema.KeyGroup2ItemIII,
			Criteria: []Criterion{
				Keywords("histórico", securitizationHistoryTerms...),
				Keywords("securitização", securitizationTerms...),
				window, amount,
				Keywords("resultados", outcomeTerms...),
			},
			MetAt:      4,
			DoubtfulAt: 2,
			MetNote: fmt.Sprintf("Encontrou histórico profissional em securitização com valores >= %s nos últimos %d anos",
				FormatAmount(cfg.CurrencyThreshold), cfg.TimeWindowYears),
			MissingNote: "Não encontrou histórico profissional completo em securitização",
		},
		{
			Key: schema.KeyGroup2ItemIV,
			Criteria: []Criterion{
				Keywords("contábil", securitizationAccountingTerms...),
				Keywords("securitização", securitizationTerms...),
				Keywords("debêntures", debentureTerms...),
				Keywords("documentos", documentTerms...),
			},
			MetAt:       3,
			DoubtfulAt:  2,
			MetNote:     "Encontrou capacidade contábil para análise de documentos de securitização e debêntures",
			MissingNote: "Não encontrou capacidade contábil completa para análise de documentos de securitização e debêntures",
		},
		{
			Key: schema.KeyMandatoryProof,
			Criteria: []Criterion{
				Keywords("sentença", rulingTerms...),
				Keywords("certidão", certificateTerms...),
			},
			MetAt:       2,
			DoubtfulAt:  1,
			MetNote:     "Encontrou sentenças favoráveis e certidões de trânsito em julgado",
			PartialNote: "Encontrou parcialmente comprovações obrigatórias",
			MissingNote: "Não encontrou sentenças favoráveis ou certidões de trânsito em julgado",
		},
	}

	out := make(map[schema.RequirementKey]Rule, len(rules))
	for _, r := range rules {
		out[r.Key] = r
	}
	return out
}
