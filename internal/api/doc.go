// Package api provides the KRX Open API client.
//
// Every dataset is fetched with a POST carrying {"basDd":"YYYYMMDD"} and a
// static AUTH_KEY header. Responses arrive as raw bytes with no reliable
// charset (UTF-8 or EUC-KR/MS949, varying per response) and no stable JSON
// envelope (a bare array, or an object wrapping the array under one of
// several key spellings), so the client resolves the charset and locates the
// record array before handing rows to callers.
//
// Endpoints, relative to the /svc/apis base:
//   - /sto/stk_isu_base_info, /sto/ksq_isu_base_info: ticker master
//   - /sto/stk_bydd_trd, /sto/ksq_bydd_trd: daily trade (also carries OHLC)
//   - /idx/kospi_dd_trd, /idx/kosdaq_dd_trd: index daily price
package api
