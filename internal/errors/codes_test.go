package errors

import (
	"testing"
)

func TestErrorCodeTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		phase    string
		category string
	}{
		{"LEX001", LEX001, "lexer", "syntax"},
		{"PAR001", PAR001, "parser", "syntax"},
		{"PAR010", PAR010, "parser", "syntax"},
		{"MOD001", MOD001, "module", "structure"},
		{"MOD004", MOD004, "module", "namespace"},
		{"LDR001", LDR001, "loader", "resolution"},
		{"LDR002", LDR002, "loader", "dependency"},
		{"TC001", TC001, "typecheck", "type"},
		{"TC003", TC003, "typecheck", "unification"},
		{"TR001", TR001, "traits", "resolution"},
		{"PAT001", PAT001, "patterns", "exhaustiveness"},
		{"MIR001", MIR001, "mir", "monomorphization"},
		{"RT001", RT001, "runtime", "arithmetic"},
		{"RT004", RT004, "runtime", "actor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, exists := GetErrorInfo(tt.code)
			if !exists {
				t.Errorf("Error code %s not found in registry", tt.code)
				return
			}

			if info.Code != tt.code {
				t.Errorf("Code mismatch: got %s, want %s", info.Code, tt.code)
			}

			if info.Phase != tt.phase {
				t.Errorf("Phase mismatch for %s: got %s, want %s", tt.code, info.Phase, tt.phase)
			}

			if info.Category != tt.category {
				t.Errorf("Category mismatch for %s: got %s, want %s", tt.code, info.Category, tt.category)
			}
		})
	}
}

func TestErrorTypeCheckers(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		isParser  bool
		isModule  bool
		isLoader  bool
		isType    bool
		isRuntime bool
	}{
		{"Parser error", PAR001, true, false, false, false, false},
		{"Module error", MOD001, false, true, false, false, false},
		{"Loader error", LDR001, false, false, true, false, false},
		{"Type error", TC001, false, false, false, true, false},
		{"Runtime error", RT001, false, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsParserError(tt.code); got != tt.isParser {
				t.Errorf("IsParserError(%s) = %v, want %v", tt.code, got, tt.isParser)
			}

			if got := IsModuleError(tt.code); got != tt.isModule {
				t.Errorf("IsModuleError(%s) = %v, want %v", tt.code, got, tt.isModule)
			}

			if got := IsLoaderError(tt.code); got != tt.isLoader {
				t.Errorf("IsLoaderError(%s) = %v, want %v", tt.code, got, tt.isLoader)
			}

			if got := IsTypeError(tt.code); got != tt.isType {
				t.Errorf("IsTypeError(%s) = %v, want %v", tt.code, got, tt.isType)
			}

			if got := IsRuntimeError(tt.code); got != tt.isRuntime {
				t.Errorf("IsRuntimeError(%s) = %v, want %v", tt.code, got, tt.isRuntime)
			}
		})
	}
}

func TestAllErrorCodesInRegistry(t *testing.T) {
	allCodes := []string{
		LEX001, LEX002, LEX003, LEX004, LEX005,
		PAR001, PAR002, PAR003, PAR004, PAR005, PAR006, PAR007, PAR008, PAR009, PAR010,
		MOD001, MOD002, MOD003, MOD004, MOD005,
		LDR001, LDR002, LDR003, LDR004, LDR005,
		TC001, TC002, TC003, TC004, TC005, TC006,
		TR001, TR002, TR003, TR004,
		PAT001, PAT002, PAT003, PAT004, PAT005,
		MIR001, MIR002,
		RT001, RT002, RT003, RT004, RT005, RT006, RT007, RT008,
	}

	for _, code := range allCodes {
		t.Run(code, func(t *testing.T) {
			_, exists := GetErrorInfo(code)
			if !exists {
				t.Errorf("Error code %s is defined but not in registry", code)
			}
		})
	}

	if len(ErrorRegistry) < len(allCodes) {
		t.Errorf("Registry has %d codes, expected at least %d", len(ErrorRegistry), len(allCodes))
	}
}

func TestErrorInfoConsistency(t *testing.T) {
	for code, info := range ErrorRegistry {
		if info.Code != code {
			t.Errorf("Code mismatch in registry: key=%s, info.Code=%s", code, info.Code)
		}

		if len(code) < 4 || len(code) > 6 {
			t.Errorf("Invalid code format: %s", code)
		}

		validPhases := map[string]bool{
			"lexer": true, "parser": true, "module": true, "loader": true,
			"typecheck": true, "traits": true, "patterns": true,
			"mir": true, "runtime": true,
		}
		if !validPhases[info.Phase] {
			t.Errorf("Invalid phase for %s: %s", code, info.Phase)
		}

		if info.Description == "" {
			t.Errorf("Empty description for %s", code)
		}
	}
}
