//go:build darwin && cgo

package clipboard

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa

#import <Cocoa/Cocoa.h>
#include <stdlib.h>
#include <string.h>

// writeTextToPasteboard writes text to the macOS pasteboard.
// Returns 1 on success, 0 on failure.
int writeTextToPasteboard(const char *text, unsigned long length) {
    @autoreleasepool {
        NSPasteboard *pasteboard = [NSPasteboard generalPasteboard];
        [pasteboard clearContents];

        NSString *string = [[NSString alloc] initWithBytes:text length:length encoding:NSUTF8StringEncoding];
        if (string == nil) {
            return 0;
        }

        BOOL success = [pasteboard setString:string forType:NSPasteboardTypeString];
        return success ? 1 : 0;
    }
}

// readTextFromPasteboard reads text from the macOS pasteboard.
// Sets *outData to a malloc'd UTF-8 buffer and returns its length, or
// returns 0 with *outData NULL when the pasteboard holds no text.
unsigned long readTextFromPasteboard(void **outData) {
    @autoreleasepool {
        NSPasteboard *pasteboard = [NSPasteboard generalPasteboard];
        NSString *string = [pasteboard stringForType:NSPasteboardTypeString];
        if (string == nil) {
            *outData = NULL;
            return 0;
        }

        const char *utf8 = [string UTF8String];
        if (utf8 == NULL) {
            *outData = NULL;
            return 0;
        }

        unsigned long len = strlen(utf8);
        if (len == 0) {
            *outData = NULL;
            return 0;
        }
        *outData = malloc(len);
        if (*outData == NULL) {
            return 0;
        }
        memcpy(*outData, utf8, len);
        return len;
    }
}

void freeTextData(void *data) {
    free(data);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/zhubert/rift/internal/logger"
)

// Init is a no-op on macOS; the native pasteboard needs no setup.
// This is safe to call multiple times.
func Init() error {
	return nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	result := C.writeTextToPasteboard(cText, C.ulong(len(text)))
	if result == 0 {
		return fmt.Errorf("failed to write text to clipboard")
	}

	logger.Debug("clipboard: wrote %d bytes of text", len(text))
	return nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	var dataPtr unsafe.Pointer
	length := C.readTextFromPasteboard(&dataPtr)
	if length == 0 || dataPtr == nil {
		return "", nil
	}

	data := C.GoBytes(dataPtr, C.int(length))
	C.freeTextData(dataPtr)
	return string(data), nil
}
