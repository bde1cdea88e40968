// Package ast defines the node-kind taxonomy for the parsed concrete
// syntax tree. Nodes are identified generically — by id, kind, and token
// span — rather than by per-kind Go struct fields; children are reached
// through the node-id map's child-order index (package parse), never
// through typed accessor methods. This mirrors how the parse context must
// already represent an in-progress node before its children exist: the
// completed ast.Node and the in-progress parse.ContextNode share the same
// shape so the xor-node abstraction never has to special-case one of them.
package ast

// NodeKind enumerates every grammar production this module recognizes.
// Comments document each kind's canonical child order, since
// NodeIdMapCollection.childIdsById preserves exactly that order
// (invariant I2).
type NodeKind int

const (
	NodeKindUnknown NodeKind = iota

	// Document wraps either a SectionDocument or a bare Expression.
	NodeKindDocument

	NodeKindSection            // [LiteralAttributes?] "section" Name? ";" SectionMember*
	NodeKindSectionMember      // LiteralAttributes? "shared"? Name "=" Expression ";"
	NodeKindRecordLiteral      // "[" GeneralizedIdentifierPairedExpression csv "]" (section attribute record)

	NodeKindLetExpression        // "let" Csv<Identifier "=" Expression> "in" Expression
	NodeKindIdentifierPairedExpression
	NodeKindIfExpression         // "if" Expression "then" Expression "else" Expression
	NodeKindEachExpression       // "each" Expression
	NodeKindFunctionExpression   // ParameterList ("as" Type)? "=>" Expression
	NodeKindParameterList        // "(" Csv<Parameter> ")"
	NodeKindParameter            // "optional"? Name (AsNullablePrimitiveType)?
	NodeKindAsNullablePrimitiveType

	NodeKindInvokeExpression     // Primary "(" Csv<Expression> ")"
	NodeKindListExpression       // "{" Csv<Expression> "}"
	NodeKindRecordExpression     // "[" Csv<IdentifierPairedExpression> "]"
	NodeKindItemAccessExpression // Primary "{" Expression (, Expression)? "}"
	NodeKindFieldSelector        // Primary? "[" GeneralizedIdentifier "]" "?"? (Primary present only when used as a primary-expression suffix, absent as a FieldProjection element)
	NodeKindFieldProjection      // Primary "[" Csv<FieldSelector> "]" "?"?
	NodeKindParenthesizedExpression

	NodeKindArithmeticExpression // left op right, left-associative
	NodeKindLogicalExpression
	NodeKindEqualityExpression
	NodeKindRelationalExpression
	NodeKindMetadataExpression
	NodeKindUnaryExpression // op+ Expression
	NodeKindAsExpression    // Expression "as" Type
	NodeKindIsExpression    // Expression "is" Type
	NodeKindNotImplementedExpression

	NodeKindTryExpression // "try" Expression OtherwiseExpression?
	NodeKindOtherwiseExpression
	NodeKindErrorRaisingExpression   // "error" Expression
	NodeKindErrorHandlingExpression  // "try" Expression ("otherwise" Expression)?

	NodeKindTypeExpression // "type" Primary
	NodeKindPrimaryType    // a bare primitive type name, or a record/list/function/table/nullable type
	NodeKindRecordType     // "[" Csv<GeneralizedIdentifierPairedType> "]"
	NodeKindTableType      // "table" (PrimaryType | RowType)
	NodeKindListType       // "{" Type "}"
	NodeKindFunctionType   // "function" ParameterList "as" Type
	NodeKindNullableType   // "nullable" Type
	NodeKindGeneralizedIdentifierPairedType

	NodeKindIdentifier           // leaf: a bare name
	NodeKindIdentifierExpression // "@"? Identifier
	NodeKindGeneralizedIdentifier // leaf: a dotted/keyword-tolerant name
	NodeKindLiteralExpression    // leaf: numeric, hex, string, null, true/false
	NodeKindConstant             // leaf: a fixed keyword or punctuator spelled out verbatim

	NodeKindCsvArray  // wraps a comma-separated list of some element kind
	NodeKindCsv       // a single element + optional trailing comma marker

	NodeKindRangeExpression // Expression ".." Expression (version-dependent; carried for completeness)
)

// IsLeaf reports whether nodes of this kind never have children — they
// directly own a token span with no substructure the node-id map needs to
// track separately.
func (k NodeKind) IsLeaf() bool {
	switch k {
	case NodeKindIdentifier, NodeKindGeneralizedIdentifier, NodeKindLiteralExpression, NodeKindConstant:
		return true
	default:
		return false
	}
}

var nodeKindNames = map[NodeKind]string{
	NodeKindUnknown:                          "Unknown",
	NodeKindDocument:                         "Document",
	NodeKindSection:                          "Section",
	NodeKindSectionMember:                    "SectionMember",
	NodeKindRecordLiteral:                    "RecordLiteral",
	NodeKindLetExpression:                    "LetExpression",
	NodeKindIdentifierPairedExpression:       "IdentifierPairedExpression",
	NodeKindIfExpression:                     "IfExpression",
	NodeKindEachExpression:                   "EachExpression",
	NodeKindFunctionExpression:               "FunctionExpression",
	NodeKindParameterList:                    "ParameterList",
	NodeKindParameter:                        "Parameter",
	NodeKindAsNullablePrimitiveType:          "AsNullablePrimitiveType",
	NodeKindInvokeExpression:                 "InvokeExpression",
	NodeKindListExpression:                   "ListExpression",
	NodeKindRecordExpression:                 "RecordExpression",
	NodeKindItemAccessExpression:             "ItemAccessExpression",
	NodeKindFieldSelector:                    "FieldSelector",
	NodeKindFieldProjection:                  "FieldProjection",
	NodeKindParenthesizedExpression:          "ParenthesizedExpression",
	NodeKindArithmeticExpression:             "ArithmeticExpression",
	NodeKindLogicalExpression:                "LogicalExpression",
	NodeKindEqualityExpression:               "EqualityExpression",
	NodeKindRelationalExpression:             "RelationalExpression",
	NodeKindMetadataExpression:               "MetadataExpression",
	NodeKindUnaryExpression:                  "UnaryExpression",
	NodeKindAsExpression:                     "AsExpression",
	NodeKindIsExpression:                     "IsExpression",
	NodeKindNotImplementedExpression:         "NotImplementedExpression",
	NodeKindTryExpression:                    "TryExpression",
	NodeKindOtherwiseExpression:              "OtherwiseExpression",
	NodeKindErrorRaisingExpression:           "ErrorRaisingExpression",
	NodeKindErrorHandlingExpression:          "ErrorHandlingExpression",
	NodeKindTypeExpression:                   "TypeExpression",
	NodeKindPrimaryType:                      "PrimaryType",
	NodeKindRecordType:                       "RecordType",
	NodeKindTableType:                        "TableType",
	NodeKindListType:                         "ListType",
	NodeKindFunctionType:                     "FunctionType",
	NodeKindNullableType:                     "NullableType",
	NodeKindGeneralizedIdentifierPairedType:  "GeneralizedIdentifierPairedType",
	NodeKindIdentifier:                       "Identifier",
	NodeKindIdentifierExpression:             "IdentifierExpression",
	NodeKindGeneralizedIdentifier:            "GeneralizedIdentifier",
	NodeKindLiteralExpression:                "LiteralExpression",
	NodeKindConstant:                         "Constant",
	NodeKindCsvArray:                         "CsvArray",
	NodeKindCsv:                              "Csv",
	NodeKindRangeExpression:                  "RangeExpression",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}
