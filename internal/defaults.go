package internal

import tt "github.com/gnolang/depwarn/internal/types"

// DefaultRules are the deprecations of the gno standard library that are
// always checked.
func DefaultRules() []tt.DeprecationRule {
	return []tt.DeprecationRule{
		{Package: "std", Function: "GetCallerAt", Alternative: "std.CallerAt"},
		{Package: "std", Function: "GetOrigSend", Alternative: "std.OriginSend"},
		{Package: "std", Function: "GetOrigCaller", Alternative: "std.OriginCaller"},
		{Package: "std", Function: "TestSetOrigCaller", Alternative: "std.TestSetOriginCaller"},
		{Package: "std", Function: "TestSetOrigSend", Alternative: "std.TestSetOriginSend"},
		{Package: "std", Function: "TestSetOrigPkgAddr", Alternative: "std.TestSetOriginPkgAddress"},
		{Package: "std", Function: "PrevRealm", Alternative: "std.PreviousRealm"},
		{Package: "std", Function: "GetChainID", Alternative: "std.ChainID"},
		{Package: "std", Function: "GetBanker", Alternative: "std.NewBanker"},
		{Package: "std", Function: "GetChainDomain", Alternative: "std.ChainDomain"},
		{Package: "std", Function: "GetHeight", Alternative: "std.ChainHeight"},
		{Package: "std", Type: "Address", Function: "Addr", Alternative: "Address"},
		{Package: "std", Type: "Realm", Function: "Addr", Alternative: "Address"},
	}
}
