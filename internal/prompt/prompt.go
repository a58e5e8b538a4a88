// Package prompt holds the fixed prompt templates. Templates are data:
// orchestration code fills them in but never embeds its own wording.
package prompt

import "fmt"

// SystemGrounding is prepended whenever market data backs the answer.
const SystemGrounding = "한국어로, 근거 중심으로 답하라."

// DisambiguationGuard and DisambiguationAsk form the fallback pair attached
// when a candidate ticker was detected but no market data could be fetched.
const DisambiguationGuard = "사용자 입력의 토큰을 의학/일반 약어로 추측하지 마라. 주식/ETF 티커로 우선 해석하라."

func DisambiguationAsk(symbol string) string {
	return fmt.Sprintf(`사용자가 "%s"를 물었다. 이것이 주식/ETF 티커라는 전제로, 무엇인지(ETF/주식), 추종지수/섹터/용도(장기 적립식 관점)를 간단히 설명하라. 정확한 확인을 위해 거래소/국가를 1줄로 질문하라.`, symbol)
}

const enrichmentTemplate = `사용자가 종목/ETF 티커를 언급했다: %s
아래 Finnhub 데이터만 근거로 답하라. 모르면 모른다고 말하라.
과장 금지. 추정은 '추정'으로 표시.

[Finnhub quote]
%s

[Finnhub profile2]
%s

[Finnhub metrics]
%s

[Finnhub news(최근10일, 최대5개)]
%s

[출력 형식]
1) 한줄 결론(장기/적립식 관점)
2) 펀더멘털 강점 3 (근거 포함)
3) 리스크 3 (근거 포함)
4) 액션 3 (분할매수 조건 포함)
5) 확인 질문 2`

// Enrichment renders the data-dump system message for a detected ticker.
// The payload arguments are provider JSON, injected verbatim.
func Enrichment(symbol, quote, profile, metrics, news string) string {
	return fmt.Sprintf(enrichmentTemplate, symbol, quote, profile, metrics, news)
}

const shouldIBuyTemplate = `너는 투자 리서치 어시스턴트다.
사용자 질문: "%s"
대상 종목: %s

아래 데이터만 근거로 답하라. 모르면 모른다고 말해라.
과장 금지. 추정은 '추정'으로 표시.
투자 조언이 아니라 정보 제공이며, 마지막에 리스크 고지 1줄.

[quote]
%s

[profile2]
%s

[metrics]
%s

[news(최근10일, 최대5개)]
%s

### 요구사항
- 한국어로 답하라.
[출력 형식]
1) 결론(한 줄): 장기/적립식 관점
2) 펀더멘털 강점 3가지 (근거 지표/사실 포함)
3) 핵심 리스크 3가지 (근거 포함)
4) 체크리스트: 지금 확인해야 할 것 5개
5) 한 문장 리스크 고지`

func ShouldIBuy(question, symbol, quote, profile, metrics, news string) string {
	return fmt.Sprintf(shouldIBuyTemplate, question, symbol, quote, profile, metrics, news)
}

// DefaultBuyQuestion is used when the caller asks about a symbol without a question.
const DefaultBuyQuestion = "이 종목 사도 돼?"

const stockReportTemplate = `너는 금융 리서치 애널리스트다.
대상 종목: %s
대상 독자: %s
분석 초점: %s

아래 데이터와 "대화 내역"만 근거로 보고서를 작성하라. 모르면 모른다고 말해라.
과장 금지. 추정은 '추정'으로 표시.
투자 조언이 아니라 정보 제공이며, 마지막에 리스크 고지 1줄.

[대화 내역]
%s

[quote]
%s

[profile2]
%s

[metrics]
%s

[news(최근30일, 최대8개)]
%s

[출력 템플릿 - Markdown]
## 개요
- 요약: 3~5줄
- 사용자가 중시한 키워드: 3~5개

## 기업/사업 스냅샷
- 핵심 제품/서비스
- 지역/섹터
- 최근 뉴스 요약(1~3줄)

## 펀더멘털 체크포인트 (5)
1) ...
2) ...
3) ...
4) ...
5) ...

## 밸류에이션 스냅샷
- 주요 지표 코멘트(추정은 '추정' 표기)
- 비교 관점(동종 업계/지수 기준)

## 모멘텀/수급 단서
- quote/뉴스 기반 3가지

## 리스크 (5)
1) ...
2) ...
3) ...
4) ...
5) ...

## 향후 촉매/관찰 포인트 (5)
1) ...
2) ...
3) ...
4) ...
5) ...

## 결론
- 장기/적립식 관점 2~3줄
- 한 문장 리스크 고지`

func StockReport(symbol, audience, focus, chatContext, quote, profile, metrics, news string) string {
	return fmt.Sprintf(stockReportTemplate, symbol, audience, focus, chatContext, quote, profile, metrics, news)
}

// Defaults for the report request's optional fields.
const (
	DefaultAudience = "장기 투자자"
	DefaultFocus    = "펀더멘털 중심"
)
