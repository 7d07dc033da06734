package schema

import "time"

// DefaultModel returns the built-in catalog: the procurement template with
// both lots. Callers get a fresh copy on every call.
func DefaultModel() *ComplianceModel {
	return &ComplianceModel{
		ID:      DefaultModelID,
		Name:    "Edital de Credenciamento - Lotes 1 e 2",
		Version: "1.0",
		Kind:    ModelKindBuiltin,
		Requirements: Requirements{
			GeneralExperience: "Experiência comprovada em direito tributário e previdenciário.",
			Groups: map[string]Group{
				"1": {
					Name: "Tributário e Previdenciário",
					Items: map[string]string{
						"i":   "Condução de pelo menos 5 defesas administrativas perante a Receita Federal, Estadual ou Municipal, com valor igual ou superior a R$ 2.500.000,00, nos últimos 5 anos, com resultado exitoso.",
						"ii":  "Condução de pelo menos 5 processos judiciais em matéria tributária ou previdenciária, com valor igual ou superior a R$ 2.500.000,00, nos últimos 5 anos, com sentença favorável.",
						"iii": "Histórico profissional com a relação dos processos conduzidos e resultados obtidos em matéria tributária e previdenciária (benefício e custeio).",
						"iv":  "Capacidade técnica contábil comprovada (formação contábil, CPA, MBA ou pós-graduação).",
					},
				},
				"2": {
					Name: "PIS e COFINS / Securitização",
					Items: map[string]string{
						"i":   "Condução de pelo menos 5 defesas administrativas envolvendo securitização de créditos, com valor igual ou superior a R$ 2.500.000,00, nos últimos 5 anos, com resultado exitoso.",
						"ii":  "Condução de pelo menos 5 processos judiciais envolvendo securitização de créditos, com valor igual ou superior a R$ 2.500.000,00, nos últimos 5 anos, com sentença favorável.",
						"iii": "Histórico profissional com a lista de processos realizados em securitização nos últimos 5 anos, valores e resultados obtidos.",
						"iv":  "Capacidade contábil para análise de documentos em operações de securitização e emissão de debêntures.",
					},
				},
			},
			MandatoryProof: "Cópia das sentenças favoráveis acompanhadas da certidão de trânsito em julgado.",
		},
		CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}
