package datatypes

import (
	"hermannm.dev/enumnames"
)

type ColumnType uint8

const (
	ColumnTypeNumber ColumnType = iota + 1
	ColumnTypeBoolean
	ColumnTypeDate
	ColumnTypeString
)

var columnTypeMap = enumnames.NewMap(map[ColumnType]string{
	ColumnTypeNumber:  "number",
	ColumnTypeBoolean: "boolean",
	ColumnTypeDate:    "date",
	ColumnTypeString:  "string",
})

func (columnType ColumnType) IsValid() bool {
	return columnTypeMap.ContainsEnumValue(columnType)
}

func (columnType ColumnType) String() string {
	return columnTypeMap.GetNameOrFallback(columnType, "INVALID_COLUMN_TYPE")
}

func (columnType ColumnType) MarshalJSON() ([]byte, error) {
	return columnTypeMap.MarshalToNameJSON(columnType)
}

func (columnType *ColumnType) UnmarshalJSON(bytes []byte) error {
	return columnTypeMap.UnmarshalFromNameJSON(bytes, columnType)
}
