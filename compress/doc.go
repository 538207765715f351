// Package compress provides the codecs used to read archived benchmark inputs.
//
// Benchmark runs are often kept as compressed text next to the generated
// plots. The dataset loader picks a codec from the file extension and
// decompresses the whole resource before parsing it:
//
//   - None: plain text (no extension or anything unrecognised)
//   - Zstd: ".zst" / ".zstd", standard zstd frames
//   - S2: ".s2" / ".sz", S2 (Snappy-compatible) streams
//   - LZ4: ".lz4", LZ4 frames
//
// All formats are the ones produced by the corresponding command line tools,
// so `zstd benchmark_data.txt` yields a file the loader can read directly.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	text, err := codec.Decompress(raw)
//
// Decompressed output is capped at MaxDecompressedSize.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use; the Zstd codec
// pools its encoders and decoders internally.
package compress
