package records

// Origem define a origem do encaminhamento do caso.
type Origem string

const (
	OrigemUBS        Origem = "UBS"
	OrigemHospital   Origem = "Hospital"
	OrigemMaternidad Origem = "Maternidade"
	OrigemOutro      Origem = "Outro"
)

// Tratamento define a adequação do tratamento materno.
type Tratamento string

const (
	TratamentoAdequado     Tratamento = "Adequado"
	TratamentoInadequado   Tratamento = "Inadequado"
	TratamentoNaoRealizado Tratamento = "Não realizado"
)

// TratamentoParceiro define o estado do tratamento do parceiro.
type TratamentoParceiro string

const (
	ParceiroSim          TratamentoParceiro = "Sim"
	ParceiroNao          TratamentoParceiro = "Não"
	ParceiroParcialmente TratamentoParceiro = "Parcialmente"
)

// TipoParto define o tipo de parto.
type TipoParto string

const (
	PartoNormal  TipoParto = "Normal"
	PartoCesarea TipoParto = "Cesárea"
	PartoForceps TipoParto = "Fórceps"
)

// ResultadoTriagem define o resultado categórico de um teste de triagem.
type ResultadoTriagem string

const (
	TriagemNormal       ResultadoTriagem = "Normal"
	TriagemAlterado     ResultadoTriagem = "Alterado"
	TriagemNaoRealizado ResultadoTriagem = "Não realizado"
)

// SimNao para flags do acompanhamento. Liquor admite também "Não realizado".
type SimNao string

const (
	Sim          SimNao = "Sim"
	Nao          SimNao = "Não"
	NaoRealizado SimNao = "Não realizado"
)

// Monitoramento reúne identificação do caso e do paciente.
type Monitoramento struct {
	NumeroNotificacao string `json:"numero_notificacao"`
	NumeroSUS         string `json:"numero_sus"`
	Nome              string `json:"nome"`
	DataNascimento    string `json:"data_nascimento"` // YYYY-MM-DD
	Origem            string `json:"origem"`          // UBS, Hospital, Maternidade, Outro
}

// HistoriaMaterna reúne os dados do pré-natal da mãe.
type HistoriaMaterna struct {
	Nome               string `json:"nome"`
	Idade              int    `json:"idade"`
	DuracaoPreNatal    string `json:"duracao_pre_natal"`
	NumeroConsultas    int    `json:"numero_consultas"`
	Tratamento         string `json:"tratamento"`          // Adequado, Inadequado, Não realizado
	TratamentoParceiro string `json:"tratamento_parceiro"` // Sim, Não, Parcialmente
	Observacoes        string `json:"observacoes"`
}

// HistoricoHospitalar reúne os dados do nascimento e da internação.
type HistoricoHospitalar struct {
	TipoParto       string `json:"tipo_parto"` // Normal, Cesárea, Fórceps
	DadosNascimento string `json:"dados_nascimento"`
	VDRLMaterno     string `json:"vdrl_materno"`
	VDRLRecemNato   string `json:"vdrl_rn"`
	TratamentoRN    string `json:"tratamento_rn"`
	ExamesImagem    string `json:"exames_imagem"`
	Liquor          string `json:"liquor"`
}

// TriagemNeonatal reúne os testes de triagem do recém-nascido.
// Resultados categóricos: Normal, Alterado, Não realizado.
type TriagemNeonatal struct {
	TesteOlhinhoOD   string `json:"teste_olhinho_od"`
	TesteOlhinhoOE   string `json:"teste_olhinho_oe"`
	OrelhinhaEOAOD   string `json:"teste_orelhinha_eoa_od"`
	OrelhinhaEOAOE   string `json:"teste_orelhinha_eoa_oe"`
	OrelhinhaPEATEOD string `json:"teste_orelhinha_peate_od"`
	OrelhinhaPEATEOE string `json:"teste_orelhinha_peate_oe"`
	OximetriaMSD     string `json:"oximetria_msd"`
	OximetriaMID     string `json:"oximetria_mid"`
	TesteLinguinha   string `json:"teste_linguinha"`
	Observacoes      string `json:"observacoes"`
}

// Retorno é um checkpoint fixo do ambulatório de alto risco (1, 3, 6 e 18 meses).
type Retorno struct {
	Data       string `json:"data"` // YYYY-MM-DD
	Resultado  string `json:"resultado"`
	Tratamento string `json:"tratamento"`
}

// Acompanhamento reúne o seguimento ambulatorial de alto risco.
type Acompanhamento struct {
	DataPrimeiraConsulta string  `json:"data_primeira_consulta"` // YYYY-MM-DD
	VDRLPrimeiraConsulta string  `json:"vdrl_primeira_consulta"`
	Retorno1Mes          Retorno `json:"retorno_1_mes"`
	Retorno3Meses        Retorno `json:"retorno_3_meses"`
	Retorno6Meses        Retorno `json:"retorno_6_meses"`
	Retorno18Meses       Retorno `json:"retorno_18_meses"`
	AlteracaoLiquor      string  `json:"alteracao_liquor"` // Sim, Não, Não realizado
	Oftalmologia         bool    `json:"acompanhamento_oftalmologia"`
	Neurologia           bool    `json:"acompanhamento_neurologia"`
	Audiologia           bool    `json:"acompanhamento_audiologia"`
	OutrosEspecialistas  string  `json:"acompanhamento_outros"`
	Alta                 string  `json:"alta"` // Sim, Não
	UnidadeEncaminhada   string  `json:"unidade_encaminhada"`
	Observacoes          string  `json:"observacoes"`
}

// Payload é a árvore clínica completa de um prontuário de monitoramento
// de sífilis congênita. Sempre viaja inteira: as cinco seções com todas
// as folhas presentes (sem documentos parciais).
type Payload struct {
	Monitoramento       Monitoramento       `json:"monitoramento"`
	HistoriaMaterna     HistoriaMaterna     `json:"historia_materna"`
	HistoricoHospitalar HistoricoHospitalar `json:"historico_hospitalar"`
	TriagemNeonatal     TriagemNeonatal     `json:"triagem_neonatal"`
	Acompanhamento      Acompanhamento      `json:"acompanhamento"`
}
