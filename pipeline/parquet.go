package pipeline

import (
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"ramptest"
)

type preparedParquetRow struct {
	Minutes  float64 `parquet:"name=minutes, type=DOUBLE"`
	HRBPM    float64 `parquet:"name=heart_rate_bpm, type=DOUBLE"`
	SpeedKPH float64 `parquet:"name=speed_kph, type=DOUBLE"`
}

func marshalPreparedParquet(rows []ramptest.Row) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(preparedParquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, r := range rows {
		row := preparedParquetRow{
			Minutes:  r.Minutes,
			HRBPM:    r.HeartRate,
			SpeedKPH: r.SpeedKPH,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
