package records

import (
	"fmt"
	"sort"
	"time"
)

// FieldPath identifica uma folha do payload clínico por caminho pontuado
// (ex.: "monitoramento.nome"). Usar as constantes abaixo em vez de montar
// strings evita typos de caminho em tempo de compilação.
type FieldPath string

const (
	PathNumeroNotificacao FieldPath = "monitoramento.numero_notificacao"
	PathNumeroSUS         FieldPath = "monitoramento.numero_sus"
	PathNome              FieldPath = "monitoramento.nome"
	PathDataNascimento    FieldPath = "monitoramento.data_nascimento"
	PathOrigem            FieldPath = "monitoramento.origem"

	PathMaeNome             FieldPath = "historia_materna.nome"
	PathMaeIdade            FieldPath = "historia_materna.idade"
	PathDuracaoPreNatal     FieldPath = "historia_materna.duracao_pre_natal"
	PathNumeroConsultas     FieldPath = "historia_materna.numero_consultas"
	PathTratamentoMaterno   FieldPath = "historia_materna.tratamento"
	PathTratamentoParceiro  FieldPath = "historia_materna.tratamento_parceiro"
	PathObservacoesMaternas FieldPath = "historia_materna.observacoes"

	PathTipoParto       FieldPath = "historico_hospitalar.tipo_parto"
	PathDadosNascimento FieldPath = "historico_hospitalar.dados_nascimento"
	PathVDRLMaterno     FieldPath = "historico_hospitalar.vdrl_materno"
	PathVDRLRecemNato   FieldPath = "historico_hospitalar.vdrl_rn"
	PathTratamentoRN    FieldPath = "historico_hospitalar.tratamento_rn"
	PathExamesImagem    FieldPath = "historico_hospitalar.exames_imagem"
	PathLiquor          FieldPath = "historico_hospitalar.liquor"

	PathOlhinhoOD          FieldPath = "triagem_neonatal.teste_olhinho_od"
	PathOlhinhoOE          FieldPath = "triagem_neonatal.teste_olhinho_oe"
	PathOrelhinhaEOAOD     FieldPath = "triagem_neonatal.teste_orelhinha_eoa_od"
	PathOrelhinhaEOAOE     FieldPath = "triagem_neonatal.teste_orelhinha_eoa_oe"
	PathOrelhinhaPEATEOD   FieldPath = "triagem_neonatal.teste_orelhinha_peate_od"
	PathOrelhinhaPEATEOE   FieldPath = "triagem_neonatal.teste_orelhinha_peate_oe"
	PathOximetriaMSD       FieldPath = "triagem_neonatal.oximetria_msd"
	PathOximetriaMID       FieldPath = "triagem_neonatal.oximetria_mid"
	PathTesteLinguinha     FieldPath = "triagem_neonatal.teste_linguinha"
	PathObservacoesTriagem FieldPath = "triagem_neonatal.observacoes"

	PathDataPrimeiraConsulta FieldPath = "acompanhamento.data_primeira_consulta"
	PathVDRLPrimeiraConsulta FieldPath = "acompanhamento.vdrl_primeira_consulta"
	PathRetorno1Data         FieldPath = "acompanhamento.retorno_1_mes.data"
	PathRetorno1Resultado    FieldPath = "acompanhamento.retorno_1_mes.resultado"
	PathRetorno1Tratamento   FieldPath = "acompanhamento.retorno_1_mes.tratamento"
	PathRetorno3Data         FieldPath = "acompanhamento.retorno_3_meses.data"
	PathRetorno3Resultado    FieldPath = "acompanhamento.retorno_3_meses.resultado"
	PathRetorno3Tratamento   FieldPath = "acompanhamento.retorno_3_meses.tratamento"
	PathRetorno6Data         FieldPath = "acompanhamento.retorno_6_meses.data"
	PathRetorno6Resultado    FieldPath = "acompanhamento.retorno_6_meses.resultado"
	PathRetorno6Tratamento   FieldPath = "acompanhamento.retorno_6_meses.tratamento"
	PathRetorno18Data        FieldPath = "acompanhamento.retorno_18_meses.data"
	PathRetorno18Resultado   FieldPath = "acompanhamento.retorno_18_meses.resultado"
	PathRetorno18Tratamento  FieldPath = "acompanhamento.retorno_18_meses.tratamento"
	PathAlteracaoLiquor      FieldPath = "acompanhamento.alteracao_liquor"
	PathOftalmologia         FieldPath = "acompanhamento.acompanhamento_oftalmologia"
	PathNeurologia           FieldPath = "acompanhamento.acompanhamento_neurologia"
	PathAudiologia           FieldPath = "acompanhamento.acompanhamento_audiologia"
	PathOutrosEspecialistas  FieldPath = "acompanhamento.acompanhamento_outros"
	PathAlta                 FieldPath = "acompanhamento.alta"
	PathUnidadeEncaminhada   FieldPath = "acompanhamento.unidade_encaminhada"
	PathObservacoesAcomp     FieldPath = "acompanhamento.observacoes"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindBool
	kindDate // string no documento, mas precisa parsear como data
)

type leafDef struct {
	kind fieldKind
	str  func(*Payload) *string
	num  func(*Payload) *int
	flag func(*Payload) *bool
}

// leafDefs mapeia cada folha do payload ao seu tipo e acessor.
// A tabela alimenta Get/Set por caminho, a validação estrutural e a
// normalização de datas; manter junto com Payload ao mudar o formato.
var leafDefs = map[FieldPath]leafDef{
	PathNumeroNotificacao: {kind: kindString, str: func(p *Payload) *string { return &p.Monitoramento.NumeroNotificacao }},
	PathNumeroSUS:         {kind: kindString, str: func(p *Payload) *string { return &p.Monitoramento.NumeroSUS }},
	PathNome:              {kind: kindString, str: func(p *Payload) *string { return &p.Monitoramento.Nome }},
	PathDataNascimento:    {kind: kindDate, str: func(p *Payload) *string { return &p.Monitoramento.DataNascimento }},
	PathOrigem:            {kind: kindString, str: func(p *Payload) *string { return &p.Monitoramento.Origem }},

	PathMaeNome:             {kind: kindString, str: func(p *Payload) *string { return &p.HistoriaMaterna.Nome }},
	PathMaeIdade:            {kind: kindInt, num: func(p *Payload) *int { return &p.HistoriaMaterna.Idade }},
	PathDuracaoPreNatal:     {kind: kindString, str: func(p *Payload) *string { return &p.HistoriaMaterna.DuracaoPreNatal }},
	PathNumeroConsultas:     {kind: kindInt, num: func(p *Payload) *int { return &p.HistoriaMaterna.NumeroConsultas }},
	PathTratamentoMaterno:   {kind: kindString, str: func(p *Payload) *string { return &p.HistoriaMaterna.Tratamento }},
	PathTratamentoParceiro:  {kind: kindString, str: func(p *Payload) *string { return &p.HistoriaMaterna.TratamentoParceiro }},
	PathObservacoesMaternas: {kind: kindString, str: func(p *Payload) *string { return &p.HistoriaMaterna.Observacoes }},

	PathTipoParto:       {kind: kindString, str: func(p *Payload) *string { return &p.HistoricoHospitalar.TipoParto }},
	PathDadosNascimento: {kind: kindString, str: func(p *Payload) *string { return &p.HistoricoHospitalar.DadosNascimento }},
	PathVDRLMaterno:     {kind: kindString, str: func(p *Payload) *string { return &p.HistoricoHospitalar.VDRLMaterno }},
	PathVDRLRecemNato:   {kind: kindString, str: func(p *Payload) *string { return &p.HistoricoHospitalar.VDRLRecemNato }},
	PathTratamentoRN:    {kind: kindString, str: func(p *Payload) *string { return &p.HistoricoHospitalar.TratamentoRN }},
	PathExamesImagem:    {kind: kindString, str: func(p *Payload) *string { return &p.HistoricoHospitalar.ExamesImagem }},
	PathLiquor:          {kind: kindString, str: func(p *Payload) *string { return &p.HistoricoHospitalar.Liquor }},

	PathOlhinhoOD:          {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.TesteOlhinhoOD }},
	PathOlhinhoOE:          {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.TesteOlhinhoOE }},
	PathOrelhinhaEOAOD:     {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.OrelhinhaEOAOD }},
	PathOrelhinhaEOAOE:     {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.OrelhinhaEOAOE }},
	PathOrelhinhaPEATEOD:   {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.OrelhinhaPEATEOD }},
	PathOrelhinhaPEATEOE:   {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.OrelhinhaPEATEOE }},
	PathOximetriaMSD:       {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.OximetriaMSD }},
	PathOximetriaMID:       {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.OximetriaMID }},
	PathTesteLinguinha:     {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.TesteLinguinha }},
	PathObservacoesTriagem: {kind: kindString, str: func(p *Payload) *string { return &p.TriagemNeonatal.Observacoes }},

	PathDataPrimeiraConsulta: {kind: kindDate, str: func(p *Payload) *string { return &p.Acompanhamento.DataPrimeiraConsulta }},
	PathVDRLPrimeiraConsulta: {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.VDRLPrimeiraConsulta }},
	PathRetorno1Data:         {kind: kindDate, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno1Mes.Data }},
	PathRetorno1Resultado:    {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno1Mes.Resultado }},
	PathRetorno1Tratamento:   {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno1Mes.Tratamento }},
	PathRetorno3Data:         {kind: kindDate, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno3Meses.Data }},
	PathRetorno3Resultado:    {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno3Meses.Resultado }},
	PathRetorno3Tratamento:   {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno3Meses.Tratamento }},
	PathRetorno6Data:         {kind: kindDate, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno6Meses.Data }},
	PathRetorno6Resultado:    {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno6Meses.Resultado }},
	PathRetorno6Tratamento:   {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno6Meses.Tratamento }},
	PathRetorno18Data:        {kind: kindDate, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno18Meses.Data }},
	PathRetorno18Resultado:   {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno18Meses.Resultado }},
	PathRetorno18Tratamento:  {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Retorno18Meses.Tratamento }},
	PathAlteracaoLiquor:      {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.AlteracaoLiquor }},
	PathOftalmologia:         {kind: kindBool, flag: func(p *Payload) *bool { return &p.Acompanhamento.Oftalmologia }},
	PathNeurologia:           {kind: kindBool, flag: func(p *Payload) *bool { return &p.Acompanhamento.Neurologia }},
	PathAudiologia:           {kind: kindBool, flag: func(p *Payload) *bool { return &p.Acompanhamento.Audiologia }},
	PathOutrosEspecialistas:  {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.OutrosEspecialistas }},
	PathAlta:                 {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Alta }},
	PathUnidadeEncaminhada:   {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.UnidadeEncaminhada }},
	PathObservacoesAcomp:     {kind: kindString, str: func(p *Payload) *string { return &p.Acompanhamento.Observacoes }},
}

// AllPaths devolve todos os caminhos de folha em ordem estável.
func AllPaths() []FieldPath {
	out := make([]FieldPath, 0, len(leafDefs))
	for p := range leafDefs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DatePaths devolve os caminhos cujas folhas carregam datas.
func DatePaths() []FieldPath {
	out := make([]FieldPath, 0, 7)
	for _, p := range AllPaths() {
		if leafDefs[p].kind == kindDate {
			out = append(out, p)
		}
	}
	return out
}

// Get lê o valor da folha apontada por path. Retorna false para caminho
// desconhecido.
func (p *Payload) Get(path FieldPath) (any, bool) {
	def, ok := leafDefs[path]
	if !ok {
		return nil, false
	}
	switch def.kind {
	case kindInt:
		return *def.num(p), true
	case kindBool:
		return *def.flag(p), true
	default:
		return *def.str(p), true
	}
}

// Set escreve o valor da folha apontada por path. O valor precisa casar com
// o tipo da folha (string para texto/data, int para numéricos, bool para
// flags); a coerção string→int/data fica a cargo do form controller.
func (p *Payload) Set(path FieldPath, value any) error {
	def, ok := leafDefs[path]
	if !ok {
		return fmt.Errorf("unknown field path %q", path)
	}
	switch def.kind {
	case kindInt:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("field %q expects int, got %T", path, value)
		}
		*def.num(p) = v
	case kindBool:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("field %q expects bool, got %T", path, value)
		}
		*def.flag(p) = v
	default:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q expects string, got %T", path, value)
		}
		*def.str(p) = v
	}
	return nil
}

// DateLayout é o formato das folhas de data do documento.
const DateLayout = "2006-01-02"

// ParseDate aceita YYYY-MM-DD ou RFC3339 (valor já vindo como data).
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
