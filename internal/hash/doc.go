// Package hash provides the checksum used to protect snapshot payloads.
//
// All checksums use CRC32-Castagnoli (CRC32C), which Go's hash/crc32
// accelerates with SSE4.2 on x86 and the CRC extension on ARM.
//
// For one-shot checksums:
//
//	checksum := hash.CRC32C(data)
//
// For streaming checksums:
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
package hash
