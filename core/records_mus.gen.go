// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slice8XLAnud5v7MΔgbvYZtVd0QΞΞ = ord.NewSliceSer[string](ord.String)
	sliceCyΔ0VnejAm2YpXJ9kzw0KQΞΞ = ord.NewSliceSer[float32](varint.Float32)
	sliceMLq9rbLl9AK7nΔC6IoRKywΞΞ = ord.NewSliceSer[VisualScene](VisualSceneMUS)
	sliceaJnQQcD4tY8lIoVuzdLszQΞΞ = ord.NewSliceSer[SpeechLine](SpeechLineMUS)
	slicetrZ6wHΔ6aTBqBhQSJHzSMQΞΞ = ord.NewSliceSer[TopicEntry](TopicEntryMUS)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var ChunkKindMUS = chunkKindMUS{}

type chunkKindMUS struct{}

func (s chunkKindMUS) Marshal(v ChunkKind, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (s chunkKindMUS) Unmarshal(bs []byte) (v ChunkKind, n int, err error) {
	tmp, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ChunkKind(tmp)
	return
}

func (s chunkKindMUS) Size(v ChunkKind) (size int) {
	return ord.String.Size(string(v))
}

func (s chunkKindMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

var VisualSceneMUS = visualSceneMUS{}

type visualSceneMUS struct{}

func (s visualSceneMUS) Marshal(v VisualScene, bs []byte) (n int) {
	n = ord.String.Marshal(v.Timestamp, bs)
	n += ord.String.Marshal(v.Scene, bs[n:])
	return n + slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Marshal(v.KeyElements, bs[n:])
}

func (s visualSceneMUS) Unmarshal(bs []byte) (v VisualScene, n int, err error) {
	v.Timestamp, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Scene, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.KeyElements, n1, err = slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s visualSceneMUS) Size(v VisualScene) (size int) {
	size = ord.String.Size(v.Timestamp)
	size += ord.String.Size(v.Scene)
	return size + slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Size(v.KeyElements)
}

func (s visualSceneMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Skip(bs[n:])
	n += n1
	return
}

var SpeechLineMUS = speechLineMUS{}

type speechLineMUS struct{}

func (s speechLineMUS) Marshal(v SpeechLine, bs []byte) (n int) {
	n = ord.String.Marshal(v.Timestamp, bs)
	return n + ord.String.Marshal(v.Text, bs[n:])
}

func (s speechLineMUS) Unmarshal(bs []byte) (v SpeechLine, n int, err error) {
	v.Timestamp, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s speechLineMUS) Size(v SpeechLine) (size int) {
	size = ord.String.Size(v.Timestamp)
	return size + ord.String.Size(v.Text)
}

func (s speechLineMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var AudioContentMUS = audioContentMUS{}

type audioContentMUS struct{}

func (s audioContentMUS) Marshal(v AudioContent, bs []byte) (n int) {
	n = sliceaJnQQcD4tY8lIoVuzdLszQΞΞ.Marshal(v.Speech, bs)
	n += slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Marshal(v.Music, bs[n:])
	return n + slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Marshal(v.SoundEffects, bs[n:])
}

func (s audioContentMUS) Unmarshal(bs []byte) (v AudioContent, n int, err error) {
	v.Speech, n, err = sliceaJnQQcD4tY8lIoVuzdLszQΞΞ.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Music, n1, err = slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SoundEffects, n1, err = slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s audioContentMUS) Size(v AudioContent) (size int) {
	size = sliceaJnQQcD4tY8lIoVuzdLszQΞΞ.Size(v.Speech)
	size += slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Size(v.Music)
	return size + slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Size(v.SoundEffects)
}

func (s audioContentMUS) Skip(bs []byte) (n int, err error) {
	n, err = sliceaJnQQcD4tY8lIoVuzdLszQΞΞ.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Skip(bs[n:])
	n += n1
	return
}

var TopicEntryMUS = topicEntryMUS{}

type topicEntryMUS struct{}

func (s topicEntryMUS) Marshal(v TopicEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += varint.Float64.Marshal(v.Relevance, bs[n:])
	return n + ord.String.Marshal(v.Context, bs[n:])
}

func (s topicEntryMUS) Unmarshal(bs []byte) (v TopicEntry, n int, err error) {
	v.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Relevance, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Context, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s topicEntryMUS) Size(v TopicEntry) (size int) {
	size = ord.String.Size(v.Name)
	size += varint.Float64.Size(v.Relevance)
	return size + ord.String.Size(v.Context)
}

func (s topicEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var ChunkMetadataMUS = chunkMetadataMUS{}

type chunkMetadataMUS struct{}

func (s chunkMetadataMUS) Marshal(v ChunkMetadata, bs []byte) (n int) {
	n = ord.String.Marshal(v.VideoID, bs)
	n += ord.String.Marshal(v.VideoURL, bs[n:])
	n += varint.Int.Marshal(v.Sequence, bs[n:])
	n += varint.Int.Marshal(v.TotalChunks, bs[n:])
	n += ChunkKindMUS.Marshal(v.Kind, bs[n:])
	n += ord.String.Marshal(v.Section, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += ord.String.Marshal(v.Timestamp, bs[n:])
	n += sliceMLq9rbLl9AK7nΔC6IoRKywΞΞ.Marshal(v.Scenes, bs[n:])
	n += AudioContentMUS.Marshal(v.Audio, bs[n:])
	n += slicetrZ6wHΔ6aTBqBhQSJHzSMQΞΞ.Marshal(v.Topics, bs[n:])
	n += slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Marshal(v.Keywords, bs[n:])
	n += ord.String.Marshal(v.AccountID, bs[n:])
	n += ord.String.Marshal(v.Username, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.ProcessedAt, bs[n:])
}

func (s chunkMetadataMUS) Unmarshal(bs []byte) (v ChunkMetadata, n int, err error) {
	v.VideoID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.VideoURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Sequence, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalChunks, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Kind, n1, err = ChunkKindMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Section, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Scenes, n1, err = sliceMLq9rbLl9AK7nΔC6IoRKywΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Audio, n1, err = AudioContentMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Topics, n1, err = slicetrZ6wHΔ6aTBqBhQSJHzSMQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Keywords, n1, err = slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AccountID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Username, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProcessedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMetadataMUS) Size(v ChunkMetadata) (size int) {
	size = ord.String.Size(v.VideoID)
	size += ord.String.Size(v.VideoURL)
	size += varint.Int.Size(v.Sequence)
	size += varint.Int.Size(v.TotalChunks)
	size += ChunkKindMUS.Size(v.Kind)
	size += ord.String.Size(v.Section)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Summary)
	size += ord.String.Size(v.Timestamp)
	size += sliceMLq9rbLl9AK7nΔC6IoRKywΞΞ.Size(v.Scenes)
	size += AudioContentMUS.Size(v.Audio)
	size += slicetrZ6wHΔ6aTBqBhQSJHzSMQΞΞ.Size(v.Topics)
	size += slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Size(v.Keywords)
	size += ord.String.Size(v.AccountID)
	size += ord.String.Size(v.Username)
	return size + raw.TimeUnixMicro.Size(v.ProcessedAt)
}

func (s chunkMetadataMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ChunkKindMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceMLq9rbLl9AK7nΔC6IoRKywΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = AudioContentMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicetrZ6wHΔ6aTBqBhQSJHzSMQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice8XLAnud5v7MΔgbvYZtVd0QΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var VectorRecordMUS = vectorRecordMUS{}

type vectorRecordMUS struct{}

func (s vectorRecordMUS) Marshal(v VectorRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += sliceCyΔ0VnejAm2YpXJ9kzw0KQΞΞ.Marshal(v.Vector, bs[n:])
	return n + ChunkMetadataMUS.Marshal(v.Metadata, bs[n:])
}

func (s vectorRecordMUS) Unmarshal(bs []byte) (v VectorRecord, n int, err error) {
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Vector, n1, err = sliceCyΔ0VnejAm2YpXJ9kzw0KQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = ChunkMetadataMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s vectorRecordMUS) Size(v VectorRecord) (size int) {
	size = ord.String.Size(v.ID)
	size += sliceCyΔ0VnejAm2YpXJ9kzw0KQΞΞ.Size(v.Vector)
	return size + ChunkMetadataMUS.Size(v.Metadata)
}

func (s vectorRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = sliceCyΔ0VnejAm2YpXJ9kzw0KQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ChunkMetadataMUS.Skip(bs[n:])
	n += n1
	return
}
