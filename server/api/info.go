package api

import (
	"net/http"

	"github.com/dekarrin/remora/internal/calc"
	"github.com/dekarrin/remora/internal/version"
	"github.com/dekarrin/remora/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.httpEndpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	tables := calc.Tables()

	var resp InfoModel
	resp.Version.Remora = version.Current().String()
	resp.Version.TableFormat = version.TableFormat().Core()
	resp.Grammar.States = tables.NumStates
	resp.Grammar.Symbols = tables.SymbolCount()
	resp.Grammar.Rules = len(tables.Rules)

	return result.OK(resp, "got API info")
}
